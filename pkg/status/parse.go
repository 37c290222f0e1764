package status

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// gatewayOKTokens are the strings that count as a healthy gateway in the
// structured form. The plain-text form additionally accepts "true".
var gatewayOKTokens = map[string]bool{
	"ok":        true,
	"up":        true,
	"reachable": true,
	"running":   true,
}

// normalizeState maps a raw channel state string onto the fixed vocabulary.
// Unknown words pass through as the uppercased first word so genuinely new
// states remain visible instead of being hidden behind "?".
func normalizeState(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return StateUnknown
	}
	word := strings.ToLower(strings.Fields(s)[0])
	switch word {
	case "ok", "up", "reachable", "running", "connected", "configured", "linked":
		return "OK"
	case "down", "error", "missing", "unlinked", "disconnected":
		return "DOWN"
	}
	return strings.ToUpper(word)
}

// mergeState fills a channel slot only when no earlier, more specific shape
// already resolved it. A resolved state is never overwritten.
func mergeState(channels map[string]string, name, state string) {
	if name == "" || state == StateUnknown {
		return
	}
	if cur, ok := channels[name]; ok && cur != StateUnknown {
		return
	}
	channels[name] = state
}

// parseStructured interprets one JSON document emitted by a "status --json"
// style invocation. It returns ok=false when the document is not a JSON
// object, so the caller can fall through to the next invocation form.
//
// Channel shapes are probed most specific first and merged without
// overwriting resolved states:
//  1. channels/channelStatus: list of per-channel objects
//  2. channelSummary: list of "<Name>: <state words>" prose lines
//  3. linkChannel: one object whose linked flag implies its channel's state
func parseStructured(out string) (Record, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		return Record{}, false
	}

	record := Record{
		Channels: map[string]string{
			ChannelTelegram: StateUnknown,
			ChannelWhatsApp: StateUnknown,
		},
	}

	if gateway, ok := data["gateway"].(map[string]any); ok {
		state, present := gateway["state"]
		if !present {
			state = gateway["reachable"]
		}
		switch v := state.(type) {
		case bool:
			record.GatewayOK = v
		case string:
			record.GatewayOK = gatewayOKTokens[strings.ToLower(strings.TrimSpace(v))]
		}
	}

	parseChannelList(data, record.Channels)
	parseChannelSummary(data, record.Channels)
	parseLinkChannel(data, record.Channels)

	record.Sessions = extractSessions(data)
	return record, true
}

func parseChannelList(data map[string]any, channels map[string]string) {
	list, _ := data["channels"].([]any)
	if len(list) == 0 {
		list, _ = data["channelStatus"].([]any)
	}
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["channel"].(string)
		if name == "" {
			name, _ = entry["name"].(string)
		}
		state, _ := entry["state"].(string)
		if state == "" {
			state, _ = entry["status"].(string)
		}
		mergeState(channels, strings.ToLower(name), normalizeState(state))
	}
}

func parseChannelSummary(data map[string]any, channels map[string]string) {
	summary, ok := data["channelSummary"].([]any)
	if !ok {
		return
	}
	for _, item := range summary {
		line, ok := item.(string)
		if !ok {
			continue
		}
		name, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		mergeState(channels, strings.ToLower(strings.TrimSpace(name)), normalizeState(rest))
	}
}

func parseLinkChannel(data map[string]any, channels map[string]string) {
	link, ok := data["linkChannel"].(map[string]any)
	if !ok {
		return
	}
	id, _ := link["id"].(string)
	linked, ok := link["linked"].(bool)
	if !ok {
		return
	}
	state := "DOWN"
	if linked {
		state = "OK"
	}
	mergeState(channels, strings.ToLower(id), state)
}

// extractSessions reads the session count from whichever integer-bearing
// field is present first: sessions.active, sessions.count, sessionCount.
func extractSessions(data map[string]any) *int {
	if sessions, ok := data["sessions"].(map[string]any); ok {
		if n, ok := asInt(sessions["active"]); ok {
			return &n
		}
		if n, ok := asInt(sessions["count"]); ok {
			return &n
		}
	}
	if n, ok := asInt(data["sessionCount"]); ok {
		return &n
	}
	return nil
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

var (
	sessionsLineRe = regexp.MustCompile(`(?im)^\s*Sessions\s*:\s*(\d+)\b`)
	labelLineRes   = map[string][]*regexp.Regexp{
		ChannelTelegram: {labelLineRe("Telegram"), labelLineRe("TG")},
		ChannelWhatsApp: {labelLineRe("WhatsApp"), labelLineRe("WA")},
	}
	gatewayLineRes = []*regexp.Regexp{labelLineRe("Gateway"), labelLineRe("gateway")}
)

func labelLineRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^\s*` + regexp.QuoteMeta(label) + `\s*:\s*([^\n]+)$`)
}

// tableStateRe matches one cell row of the CLI's newer box-drawing tables,
// e.g. "│ Telegram │ @bot │ OK │", capturing the uppercase state token.
func tableStateRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^│\s*` + regexp.QuoteMeta(label) + `\s*│.*?│\s*([A-Z]+)\s*│`)
}

func findLabel(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// parsePlain interprets the plain "status" output. It matches "Label: value"
// lines first and, for channels still unresolved, probes the fixed-width
// table rows newer CLI builds print.
func parsePlain(out string) Record {
	record := Record{
		Channels: map[string]string{
			ChannelTelegram: StateUnknown,
			ChannelWhatsApp: StateUnknown,
		},
	}

	gatewayRaw := strings.ToLower(findLabel(gatewayLineRes, out))
	record.GatewayOK = gatewayRaw != "" && (gatewayOKTokens[gatewayRaw] || gatewayRaw == "true")

	for channel, res := range labelLineRes {
		if raw := findLabel(res, out); raw != "" {
			record.Channels[channel] = normalizeState(raw)
		}
	}

	tableLabels := map[string]string{
		ChannelTelegram: "Telegram",
		ChannelWhatsApp: "WhatsApp",
	}
	for channel, label := range tableLabels {
		if record.Channels[channel] != StateUnknown {
			continue
		}
		if m := tableStateRe(label).FindStringSubmatch(out); m != nil {
			record.Channels[channel] = normalizeState(m[1])
		}
	}

	if m := sessionsLineRe.FindStringSubmatch(out); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			record.Sessions = &n
		}
	}

	return record
}
