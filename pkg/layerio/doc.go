// Package layerio reads and writes the JSON wire format for one layer of
// toolpaths and for the ordered result.
//
// # Layer Format
//
//	{
//	  "history": [0, 0],
//	  "boundaries": {
//	    "loops": [[[0, 0], [100, 0], [100, 100], [0, 100]]],
//	    "paths": []
//	  },
//	  "paths": [
//	    {"label": {"kind": "perimeter", "priority": 3},
//	     "points": [[10, 10], [90, 10], [90, 90], [10, 90]], "closed": true},
//	    {"label": {"kind": "infill", "priority": 1},
//	     "points": [[20, 20], [80, 80]]}
//	  ]
//	}
//
// "history" is the optional start position of the extruder. Boundary loops
// define the regions the optimizer partitions into; boundary paths only block
// travel. A path with "closed": true is a loop whose closing edge is implied.
//
// # Output Format
//
//	{
//	  "runs": [{"label": {...}, "points": [[x, y], ...]}],
//	  "stats": {"runs": 3, "connections": 1, ...}
//	}
//
// Use [ReadLayer] / [ImportLayer] to decode input and [WriteOutput] /
// [ExportOutput] to encode results. Decoding validates coordinates and
// labels and reports failures as INVALID_LAYER errors.
package layerio
