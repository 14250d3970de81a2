// Package residual summarizes the error signal left over after a fitting
// run. It collects the per-frame difference between the learned and ground
// truth outputs and reduces it to a few headline figures:
//
//   - RMS and peak magnitude of the residual
//   - the dominant residual frequency, from an FFT of the most recent frames
//
// A Collector implements the fitting trace sink, so it can ride along with
// the console and CSV reporters:
//
//	col := residual.NewCollector()
//	eng, _ := sgd.New(ren, store, report.Multi{console, col}, cfg)
//	_, _ = eng.Run()
//	sum, _ := col.Summary(ren.SampleRate())
package residual
