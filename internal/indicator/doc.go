// Package indicator holds the demographic series types shared by the loader,
// the chart renderer and the report driver.
//
// A Series is one indicator for one country across the table's year labels.
// Absent values are stored as NaN and are never scaled, plotted or
// interpolated.
//
// This package imports nothing internal.
package indicator
