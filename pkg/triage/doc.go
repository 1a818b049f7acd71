// Package triage provides a bug report extraction engine that pulls
// structured fields out of unstructured bug reports, logs, and work items,
// with per-field confidence scoring.
//
// Quick start:
//
//	t, err := triage.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//
//	r, _ := t.Process("NullPointerException in PaymentService")
//	fmt.Println(r.ErrorType.Value, r.ErrorType.Confidence) // NullPointerException 0.953
//
// The Triage instance is safe for concurrent use. Create once, reuse across
// requests. See the README for full documentation.
package triage
