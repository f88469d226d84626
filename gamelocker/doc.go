// Package gamelocker provides a client for the gamelocker game-statistics
// API, covering match history, player lookup and telemetry retrieval for
// Vainglory and Battlerite.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client / AsyncClient: blocking and non-blocking entry points sharing
//     one request/response pipeline
//   - MatchQuery: typed, locally validated request filters
//   - MatchPage: paginated results advanced through the provider's opaque
//     next links
//   - APIError: a typed error taxonomy covering local validation, every
//     provider failure class and transport failures
//
// # Usage
//
// Create a client with your API key:
//
//	client, err := gamelocker.NewClient(
//		"your-api-key",
//		gamelocker.WithLogger(logger),
//		gamelocker.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	page, err := client.GetMatches(ctx, gamelocker.MatchQuery{
//		Region: "na",
//		Limit:  3,
//		After:  gamelocker.ISO("2017-11-22T20:34:58Z"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, match := range page.Matches {
//		fmt.Println(match.ID, match.GameMode)
//	}
//	if ok, err := page.Next(ctx); err == nil && ok {
//		// page.Matches now holds the second page
//	}
//
// The non-blocking client exposes the same operations as futures:
//
//	future := asyncClient.PlayerByName(ctx, "Demolasher36", "sg")
//	player, err := future.Get()
//
// # Error Handling
//
// Every failure surfaces as *APIError with a Kind: InvalidArgument before
// any request is sent, Unauthorized, NotFound, MalformedRequest,
// RateLimited (with the provider's Retry-After hint), ServerError,
// NetworkError, or DecodeError. The library never retries on its own.
//
//	var apiErr *gamelocker.APIError
//	if errors.As(err, &apiErr) && apiErr.IsRateLimited() {
//		time.Sleep(apiErr.RetryAfter)
//	}
package gamelocker
