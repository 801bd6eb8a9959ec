// Package client is a Go client for the Virtual TA HTTP API.
//
//	c, _ := client.New("http://localhost:3000")
//	ans, err := c.Ask(ctx, client.Question{Question: "Can I use Docker for this course?"})
//	for _, l := range ans.Links {
//	    fmt.Println(l.Text, l.URL)
//	}
//
// Non-2xx responses are returned as *APIError; use errors.As to inspect
// the status code and the server's validation details.
package client
