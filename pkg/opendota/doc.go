// Package opendota provides a client for the OpenDota web API.
//
// # Overview
//
// The client fronts every API call with a persistent response cache and a
// rate-limit gate for unauthenticated use:
//
//	client, err := opendota.New()
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	match, err := client.GetMatch(ctx, 271145478, false) // false = use cache
//
// Typed accessors cover matches ([Client.GetMatch],
// [Client.GetPublicMatches], [Client.GetProMatches],
// [Client.GetParsedMatches]), players ([Client.GetPlayer],
// [Client.GetPlayerMatches]) and heroes ([Client.GetHeroes],
// [Client.GetHeroStats]). [Client.Get] is the raw escape hatch for
// endpoints without a typed accessor.
//
// # Caching
//
// Responses are stored permanently in a [cache.Store] (file-backed by
// default, under ~/.cache/opendota), keyed by URL and query parameters.
// A cached call never touches the network or the rate-limit gate. Pass
// refresh=true to any accessor to force a fetch and overwrite the entry,
// or use [WithStore] to swap in the redis or null backend.
//
// # Rate limiting
//
// Without an API key the client spaces network calls at least
// [DefaultMinInterval] apart ([WithMinInterval] adjusts this). Setting a
// key via [WithAPIKey] or the OPENDOTA_API_KEY environment variable
// disables pacing; the key is sent as a bearer token by default
// ([WithAuthMethod] switches to the api_key query parameter).
//
// # Errors
//
// Failures carry a [Code] distinguishing missing resources, quota
// rejections, other API failures, and transport problems. Branch with
// [IsNotFound], [IsRateLimited], [IsTransport], or [HasCode]:
//
//	m, err := client.GetMatch(ctx, id, false)
//	if opendota.IsNotFound(err) {
//	    // match does not exist
//	}
//
// [cache.Store]: github.com/matzehuels/go-opendota/pkg/cache.Store
package opendota
