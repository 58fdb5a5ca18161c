// Package io provides JSON import and export for network topologies.
//
// # Overview
//
// This package serializes device topologies to and from a simple JSON
// format. The format is designed for:
//
//   - Feeding diagrams into the layout engine from external tools
//   - Persisting a diagram's device positions between sessions
//   - Round-trip preservation: import, lay out, export, and re-import
//
// # JSON Format
//
// The format has two required top-level arrays and an optional viewport:
//
//	{
//	  "viewport": {"width": 800, "height": 600},
//	  "nodes": [
//	    {"id": "core-rt", "type": "router", "x": 120, "y": 40, "width": 40, "height": 40},
//	    {"id": "sw-1", "type": "switch"}
//	  ],
//	  "links": [
//	    {"source": "core-rt", "target": "sw-1"}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - type: Device role ("router", "switch", "firewall", "server", "cloud",
//     "workstation"). Unknown or missing types are treated as generic and
//     receive the lowest placement priority.
//   - x, y: Current top-left position (defaults to the origin)
//   - width, height: Device size in pixels (defaults to 0)
//
// # Import
//
// Use [ImportJSON] to read a topology from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	g, err := io.ImportJSON("campus.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the structure: duplicate node IDs and links that
// reference unknown devices are errors, wrapped with context about which
// node or link caused the problem.
//
// # Export
//
// Use [ExportJSON] to write a topology to a file, or [WriteJSON] to write
// to any io.Writer. Exported positions reflect the graph's current node
// positions, so exporting after a layout write-back persists the layout.
package io
