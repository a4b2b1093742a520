// Package kind embeds the Kind job-matching engine in a Go program.
//
// The client connects to the same stores as the matcher service and
// exposes the ranked-match and swipe operations directly:
//
//	client, _ := kind.New(ctx, kind.WithSQLite("./data/kind.db"))
//	defer client.Close()
//
//	matches, _ := client.Matches(ctx, "seeker-42", 10)
//	for _, m := range matches {
//	    fmt.Println(m.JobID, m.Score, m.Reasons)
//	}
//	_, _ = client.Record(ctx, "seeker-42", matches[0].JobID, kind.ActionSkip)
//
// Use WithPostgres for the primary store and WithRedis to enable the
// preference cache and interaction events.
package kind
