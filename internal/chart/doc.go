// Package chart renders titled line charts of indicator series to PNG.
//
// Every Render call acquires a fresh Canvas, draws one chart, flushes it to
// disk and closes the canvas before returning. No plotting state survives
// from one chart to the next.
//
// The x axis is categorical: year labels are evenly spaced in the order
// given, whatever their numeric gaps. Absent values split a line into
// separate segments; they are never interpolated.
package chart
