// Package hue assembles the full client: stream transport, event pipeline,
// REST client and state cache behind one facade.
//
// Typical use:
//
//	config, err := bridge.LoadConfig("hueclip.yaml")
//	client, err := hue.NewClient(config, logger)
//	err = client.Start()
//	err = client.Seed(ctx)
//	sub, err := client.Subscribe(handler, &events.Filter{
//		ResourceTypes: []clip.ResourceType{clip.ResourceTypeLight},
//	})
//	...
//	client.Stop()
//
// Start opens the event stream before Seed fetches the full resource
// snapshots, so changes that race the fetch are still applied to the cache.
package hue
