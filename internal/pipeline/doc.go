// Package pipeline runs one pass over a contributions file.
//
// A reader goroutine extracts records and pushes them onto two queues. The
// zip consumer feeds every record to the running median processor in input
// order and hands each report to the zip sinks. The date consumer collects
// records and, once the input is exhausted, hands the sorted batch report to
// the date sinks. The three goroutines share an errgroup; the first error
// cancels the run.
package pipeline
