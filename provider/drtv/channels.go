// Package drtv implements the built-in provider for DR TV, the Danish
// Broadcasting Corporation's catch-up service.
package drtv

import (
	"fmt"

	"github.com/gense-cli/gense/source"
)

// ChannelsOf lists the currently active live channels. Responses are
// never cached: the stream ladder rotates with the broadcast schedule.
func (d *DRTV) ChannelsOf() ([]*source.Program, error) {
	var channels []*muChannel
	if err := getJSON("/channel/all-active", "", &channels); err != nil {
		return nil, err
	}

	var programs []*source.Program
	for _, ch := range channels {
		if ch.WebChannel || ch.Slug == "" {
			continue
		}

		programs = append(programs, &source.Program{
			ID:        ch.Slug,
			Slug:      ch.Slug,
			PageURL:   "https://www.dr.dk/drtv/kanal/" + ch.Slug,
			Title:     ch.Title,
			Thumbnail: ch.PrimaryImageURI,
			Live:      true,
			Index:     uint16(len(programs)),
			Source:    d,
		})
	}

	return programs, nil
}

// channelAssets synthesizes one video asset from a channel's
// streaming-server quality ladder. HDS servers are skipped; they
// stopped answering long ago.
func (d *DRTV) channelAssets(slug string) ([]*source.Asset, error) {
	var channel muChannel
	if err := getJSON("/channel/"+escape(slug), "", &channel); err != nil {
		return nil, err
	}

	asset := &source.Asset{
		Kind:   source.KindVideo,
		Target: source.TargetDefault,
	}

	for _, server := range channel.StreamingServers {
		if server.Server == "" {
			continue
		}

		transport := liveTransport(server.LinkType)
		if transport == "" {
			continue
		}

		for _, quality := range server.Qualities {
			for _, stream := range quality.Streams {
				if stream.Stream == "" {
					continue
				}

				asset.Links = append(asset.Links, &source.Link{
					URI:       fmt.Sprintf("%s/%s?b=", server.Server, stream.Stream),
					Transport: transport,
					Bitrate:   quality.Kbps,
				})
			}
		}
	}

	if channel.PrimaryImageURI != "" {
		return []*source.Asset{
			{Kind: source.KindImage, URI: channel.PrimaryImageURI},
			asset,
		}, nil
	}

	return []*source.Asset{asset}, nil
}

// liveTransport maps a streaming server's link type onto a transport.
func liveTransport(linkType string) source.Transport {
	switch linkType {
	case "HLS":
		return source.TransportHLS
	case "DASH", "DASH_B":
		return source.TransportDASH
	default:
		return ""
	}
}
