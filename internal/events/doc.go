// Package events defines the job outcome event stream. Worker pools emit
// one JobOutcomeEvent per processed job; downstream observers (structured
// logging, alerting extensions) subscribe through the Emitter interface
// instead of registering ad hoc callbacks on the pools themselves.
package events
