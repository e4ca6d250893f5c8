// Package overlay positions floating panels (popovers, dropdowns,
// suggestion lists) against anchor elements inside a terminal viewport.
//
// The pipeline is: resolve the anchor's rectangle, choose a side, compute
// clamped coordinates and an arrow offset, then paint the panel on a single
// top-level Layer. A Popover owns that pipeline for one panel and keeps it
// current by subscribing to a per-program Document for resize, scroll, key
// and pointer events plus size observations. Everything it registers is
// released when the popover closes.
package overlay
