// Package manifest defines element classes from YAML.
//
// A manifest lists components:
//
//	components:
//	  - name: badge
//	    version: v1.0.0
//	    props:
//	      label: string
//	      count: {type: number, value: 0, reflect: true}
//	    styles: [":host{display:inline-block}"]
//	    template: "{{label}} ({{count}})"
//	  - name: alert-badge
//	    extends: badge
//	    props:
//	      level: string
//
// Define registers each component under its tag, parents first. A
// component without a tag is registered as prefix-name.
package manifest
