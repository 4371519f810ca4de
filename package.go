// Package groqqy is a minimal agentic wrapper around a hosted LLM chat
// API with tool-calling support. It keeps conversation state, offers a
// small set of local tools, and repeatedly calls the model until it
// produces a final answer with no further tool requests, bounded by a
// maximum iteration count.
//
// # Quick Start
//
//	registry := tools.DefaultRegistry()
//	provider := providers.NewGroq(apiKey,
//	    providers.WithModel(providers.ModelLlama318BInstant))
//
//	agent := groqqy.NewAgent(provider, registry,
//	    groqqy.WithMaxIterations(10))
//
//	result, err := agent.Run(ctx, "What files are in this directory?")
//	if err != nil {
//	    // provider failure: network, auth, malformed upstream response
//	}
//	fmt.Println(result.Response, result.TotalCost)
//
// # Custom Tools
//
// Implement [Tool] directly, wrap a function with [NewToolFunc], or
// let [NewToolFromFunc] introspect a typed function:
//
//	weather, err := groqqy.NewToolFromFunc(
//	    "get_weather",
//	    "Get current weather for a city",
//	    func(ctx context.Context, in struct {
//	        City string `json:"city" desc:"City name"`
//	    }) (string, error) {
//	        return lookupWeather(ctx, in.City)
//	    },
//	)
//	registry.Register(weather)
//
// # Failure Model
//
// Failures inside a tool are never fatal: the executor converts them
// into error text the model reads on the next iteration. Failures of
// the model call itself are always fatal and propagate out of
// [Agent.Run]. There is no third, silent-failure path.
package groqqy
