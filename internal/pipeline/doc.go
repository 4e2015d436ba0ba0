// Package pipeline provides a framework for executing generation steps in sequence.
//
// The pipeline pattern is used to turn a template and a data file into the
// finished weekly report: the header date is refreshed, every section with
// real data has its region replaced, and the instructional notice box is
// removed. Each stage is implemented as a Step that receives the current
// report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It records which steps ran, which feeds the run summary and history
//
// Steps never run concurrently. A report is generated in a single pass.
package pipeline
