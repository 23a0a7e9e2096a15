// Command routecheck resolves location paths the way the server does and
// prints the selected mode. With -url it also prints the page URL the
// resolved street would be written back as.
//
//	go run ./cmd/routecheck -url /alice/42 /gallery "/~help/7?debug-force-metric"
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"streetmix-be/internal/bootstrap"
	"streetmix-be/internal/config"
	"streetmix-be/pkg/pageurl"
	"streetmix-be/pkg/route"

	"github.com/fatih/color"
)

func main() {
	showURL := flag.Bool("url", false, "print the page URL for the resolved street")
	flag.Parse()

	if flag.NArg() == 0 {
		color.Red("usage: routecheck [-url] <path>...")
		os.Exit(2)
	}

	tokens := bootstrap.RouteTokens(config.Load().Routes)
	resolver := route.NewResolver(tokens)
	builder := pageurl.NewBuilder(tokens, nil)

	notFound := 0
	for _, path := range flag.Args() {
		if !check(os.Stdout, resolver, builder, path, *showURL) {
			notFound++
		}
	}
	if notFound > 0 {
		os.Exit(1)
	}
}

// check prints one resolution and reports whether any rule matched.
func check(w io.Writer, resolver *route.Resolver, builder *pageurl.Builder, raw string, showURL bool) bool {
	path, query, _ := strings.Cut(raw, "?")
	res := resolver.Resolve(path)

	modeColor := color.New(color.FgGreen, color.Bold)
	if res.Mode == route.ModeNotFound {
		modeColor = color.New(color.FgRed, color.Bold)
	}

	fmt.Fprintf(w, "%-32s ", raw)
	modeColor.Fprintf(w, "%s", res.Mode)
	color.New(color.FgHiBlack).Fprintf(w, " (%s)", resolver.RuleName(path))
	fmt.Fprintln(w)

	for _, kv := range contextLines(res.Context) {
		color.New(color.FgCyan).Fprintf(w, "    %s\n", kv)
	}

	if showURL {
		var street route.StreetRef
		res.ApplyTo(&street)
		state := pageurl.State{Street: street, GalleryUserID: res.Context.GalleryUserID}
		u := builder.Build(res.Mode.IsGallery(), state, pageurl.ParseDebugFlags(query))
		color.New(color.FgYellow).Fprintf(w, "    url=%s\n", u)
	}

	return res.Mode != route.ModeNotFound
}

func contextLines(c route.Context) []string {
	var out []string
	add := func(name string, v *string) {
		if v != nil {
			out = append(out, name+"="+*v)
		}
	}
	add("galleryUserId", c.GalleryUserID)
	add("errorCode", c.ErrorCode)
	add("creatorId", c.CreatorID)
	add("namespacedId", c.NamespacedID)
	return out
}
