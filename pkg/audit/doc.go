// Package audit provides an audit trail for gateway requests.
//
// Every chat request that reaches the gateway produces one audit record
// describing who made it, what the gateway decided, and how the upstream
// call went. Records are written asynchronously so the request path never
// blocks on storage.
//
// # Components
//
//   - Record: a single audit entry (client, session, outcome, latency)
//   - Store: storage backend interface (SQLite for production, memory for tests)
//   - Recorder: async writer that drains records to a Store
//
// # Usage
//
//	store, err := audit.NewSQLiteStore(audit.DefaultSQLiteConfig())
//	if err != nil {
//		return err
//	}
//	recorder := audit.NewRecorder(store, nil)
//	defer recorder.Close()
//
//	recorder.Record(&audit.Record{
//		ClientAddr: "203.0.113.7",
//		SessionID:  "session-1",
//		Outcome:    audit.OutcomeSuccess,
//		Status:     200,
//	})
package audit
