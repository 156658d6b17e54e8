// Package procure turns unmatched tracks into Amazon Digital Music search
// tabs.
//
// It reads a CSV of tracks (typically a not-found result file), builds one
// search URL per row in the digital-music category and opens them in the
// default browser, rate limited so the browser is not flooded. The browser
// launch is injectable so tests never open tabs.
package procure
