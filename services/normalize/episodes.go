package normalize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"streamflixtv/models"
)

type serverProbe struct {
	ServerName *string          `json:"server_name"`
	ServerData *json.RawMessage `json:"server_data"`
}

// Episodes parses the detail payload's episodes field. A list of servers is
// kept as is, a flat list of episode objects (or bare names) is wrapped into a
// single unnamed server, anything else yields nil.
func Episodes(raw json.RawMessage) []models.EpisodeServer {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	var (
		servers []models.EpisodeServer
		flat    []models.EpisodeItem
	)
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		switch item[0] {
		case '{':
			var probe serverProbe
			if json.Unmarshal(item, &probe) != nil {
				continue
			}
			if probe.ServerName != nil || probe.ServerData != nil {
				var server models.EpisodeServer
				if json.Unmarshal(item, &server) != nil {
					// server_data of an unexpected shape; keep the name only
					server = models.EpisodeServer{}
					if probe.ServerName != nil {
						server.ServerName = *probe.ServerName
					}
				}
				servers = append(servers, server)
				continue
			}
			var ep models.EpisodeItem
			if json.Unmarshal(item, &ep) == nil {
				flat = append(flat, ep)
			}
		case '"':
			var name string
			if json.Unmarshal(item, &name) == nil && strings.TrimSpace(name) != "" {
				flat = append(flat, models.EpisodeItem{Name: strings.TrimSpace(name)})
			}
		}
	}

	if len(flat) > 0 {
		servers = append(servers, models.EpisodeServer{ServerData: flat})
	}
	return servers
}

// EpisodeCount returns the number of episodes on the first server, which is
// the one the episode picker opens on.
func EpisodeCount(servers []models.EpisodeServer) int {
	if len(servers) == 0 {
		return 0
	}
	return len(servers[0].ServerData)
}

// ServerLabel names a server for the season picker.
func ServerLabel(index int, server models.EpisodeServer) string {
	if name := strings.TrimSpace(server.ServerName); name != "" {
		return name
	}
	return fmt.Sprintf("Season %d", index+1)
}

// EpisodeLabel names an episode tile.
func EpisodeLabel(index int, ep models.EpisodeItem) string {
	if name := strings.TrimSpace(ep.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Episode %d", index+1)
}

// EpisodeURL returns the playable link of an episode, preferring HLS.
func EpisodeURL(ep models.EpisodeItem) string {
	if u := strings.TrimSpace(ep.LinkM3U8); u != "" {
		return u
	}
	return strings.TrimSpace(ep.LinkEmbed)
}
