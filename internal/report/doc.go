// Package report drives the chart pipeline.
//
// A report is planned from the configuration alone (Plan) and then
// executed by a Runner: load the table, extract every configured country,
// and render the per-country charts followed by the summary charts that
// overlay all countries. Rendering is sequential and any error aborts the
// run.
//
// Chart order:
//
//	pass A  <prefix>BirthDeathRate.png   per country
//	pass B  <prefix>TotalandOver65.png   per country, values in millions
//	pass C  <prefix>GrowthPercent.png    per country
//	        sumBirthRates.png, sumDeathRate.png, sumOver65.png,
//	        sumGrowthPercent.png, sumTotalPopulation.png
//
// When a Recorder is configured each run and every chart it writes is
// logged to the run manifest.
package report
