// Package pipeline drives a crawl from a profile id to a Report.
//
// # Stages
//
//  1. Bands: the profile's liked pages (Graph API).
//  2. Event IDs: each band's upcoming event listing (mobile site).
//  3. Event details: each event page, run through the extraction chain.
//
// Each unit is cached under a deterministic key (see BandsKey and friends)
// and can be recomputed per stage through config.Refresh. Event page HTML
// is cached separately from the extracted detail, so extraction rules can
// be changed and re-run with Refresh.EventDetails without refetching pages.
//
// # Basic Usage
//
//	p, err := pipeline.Open(settings, creds, onProgress)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	report, err := p.Run(ctx, config.Refresh{EventDetails: true})
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent
// after each unit. The callback cannot influence the run.
//
// # Failures
//
// The first failing unit stops the run with a *StageError naming the stage
// and cache key. Work cached before the failure is kept.
package pipeline
