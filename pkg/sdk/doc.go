// Package askdex provides a Go client for the askdex question-answering
// service: a scope-aware record retrieval pipeline over structured records.
//
//	client := askdex.New("http://localhost:8080", askdex.WithAPIKey("secret"))
//
//	rec, _ := client.CreateRecord(ctx, []askdex.Field{
//	    {Name: "name", Value: "Jane Doe"},
//	    {Name: "role", Value: "CTO"},
//	    {Name: "department", Value: "Engineering"},
//	    {Name: "bio", Value: "Leads engineering."},
//	})
//
//	answer, _ := client.Ask(ctx, "Who is the CTO?")
//	fmt.Println(answer.Answer, answer.CitedRecordIDs)
package askdex
