package hooks

import "testing"

type mockDisposable struct {
	disposed bool
}

func (m *mockDisposable) Dispose() {
	m.disposed = true
}

func TestUseController(t *testing.T) {
	r := New(nil, "id", nil)
	created := 0
	var controller *mockDisposable
	render := func(s *Scope) {
		controller = UseController(s, func() *mockDisposable {
			created++
			return &mockDisposable{}
		})
	}
	_ = r.Load(render)
	_ = r.Load(render)

	if created != 1 {
		t.Errorf("created = %d, want 1", created)
	}
	if controller.disposed {
		t.Error("Controller should not be disposed initially")
	}

	r.CollectEffects(true)()

	if !controller.disposed {
		t.Error("Controller should be disposed on terminal cleanup")
	}
}

func TestUseListenable(t *testing.T) {
	updates := 0
	r := New(nil, "id", func() { updates++ })
	notifier := NewNotifier()

	_ = r.Load(func(s *Scope) { UseListenable(s, notifier) })
	if notifier.ListenerCount() != 0 {
		t.Errorf("subscription should wait for the effect, got %d listeners", notifier.ListenerCount())
	}
	r.CollectEffects(false)()

	if notifier.ListenerCount() != 1 {
		t.Errorf("Expected 1 listener, got %d", notifier.ListenerCount())
	}
	notifier.Notify()
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}

	r.CollectEffects(true)()
	if notifier.ListenerCount() != 0 {
		t.Errorf("Expected 0 listeners after dispose, got %d", notifier.ListenerCount())
	}
}

func TestUseObservable(t *testing.T) {
	updates := 0
	r := New(nil, "id", func() { updates++ })
	obs := NewObservable(42)

	var got int
	_ = r.Load(func(s *Scope) { got = UseObservable(s, obs) })
	r.CollectEffects(false)()

	if got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	obs.Set(100)
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}
	obs.Set(100)
	if updates != 1 {
		t.Errorf("setting an equal value should not notify, updates = %d", updates)
	}

	r.CollectEffects(true)()
	obs.Set(999)
	if updates != 1 {
		t.Errorf("updates after dispose = %d, want 1", updates)
	}
}

func TestUseRef(t *testing.T) {
	updates := 0
	r := New(nil, "id", func() { updates++ })
	var ref *Ref[int]
	render := func(s *Scope) { ref = UseRef(s, 5) }

	_ = r.Load(render)
	ref.Current = 9
	_ = r.Load(render)

	if ref.Current != 9 {
		t.Errorf("Current = %d, want 9", ref.Current)
	}
	if updates != 0 {
		t.Errorf("writing a ref should not request updates, got %d", updates)
	}
}

func TestUseMemo(t *testing.T) {
	r := New(nil, "id", nil)
	computed := 0
	key := "a"
	render := func(s *Scope) {
		UseMemo(s, func() string { computed++; return key + key }, []any{key})
	}
	_ = r.Load(render)
	_ = r.Load(render)
	if computed != 1 {
		t.Errorf("computed = %d, want 1", computed)
	}
	key = "b"
	_ = r.Load(render)
	if computed != 2 {
		t.Errorf("computed = %d, want 2", computed)
	}
}

func TestUseHostAndUpdate(t *testing.T) {
	updates := 0
	r := New("the-host", "id", func() { updates++ })
	_ = r.Load(func(s *Scope) {
		if UseHost(s) != "the-host" {
			t.Errorf("UseHost() = %v", UseHost(s))
		}
		UseUpdate(s)()
	})
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}
}

func TestUseCallbackAndID(t *testing.T) {
	r := New(nil, "el-1", nil)
	calls := []string{}
	var got func()
	render := func(version string) func(s *Scope) {
		return func(s *Scope) {
			if id := UseID(s); id != "el-1" {
				t.Errorf("UseID() = %q, want %q", id, "el-1")
			}
			got = UseCallback(s, func() { calls = append(calls, version) }, []any{version == "c"})
		}
	}
	for _, v := range []string{"a", "b", "c"} {
		if err := r.Load(render(v)); err != nil {
			t.Fatalf("Load(%s) error = %v", v, err)
		}
		got()
	}
	want := []string{"a", "a", "c"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestHookOutsideRenderPanics(t *testing.T) {
	r := New(nil, "id", nil)
	var scope *Scope
	_ = r.Load(func(s *Scope) { scope = s })

	defer func() {
		if recover() == nil {
			t.Error("calling a hook outside render should panic")
		}
	}()
	UseState(scope, 0)
}

func TestObservableWithEquality(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}
	obs := NewObservableWithEquality(user{ID: 1, Name: "Alice"}, func(a, b user) bool { return a.ID == b.ID })
	var names []string
	unsub := obs.AddListener(func(u user) { names = append(names, u.Name) })

	obs.Set(user{ID: 1, Name: "Alice Updated"})
	obs.Set(user{ID: 2, Name: "Bob"})
	unsub()
	obs.Set(user{ID: 3, Name: "Carol"})

	if len(names) != 1 || names[0] != "Bob" {
		t.Errorf("notified = %v, want [Bob]", names)
	}
}
