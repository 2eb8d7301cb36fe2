package httpapi

import "strings"

// commandReference holds the operator command cheat sheets served by
// GET /api/system/commands/{type}. Static text, not executed by the server.
var commandReference = map[string][]string{
	"logs": {
		"# View llama-swap container logs:",
		"docker logs llama-swap -f",
		"",
		"# View recent logs (last 100 lines):",
		"docker logs llama-swap --tail 100",
		"",
		"# Save logs to file:",
		"docker logs llama-swap > llama-swap-logs.txt",
	},
	"restart": {
		"# Restart llama-swap container:",
		"docker restart llama-swap",
		"",
		"# Or using docker-compose:",
		"docker-compose restart llama-swap",
		"",
		"# Force restart (stop then start):",
		"docker stop llama-swap && docker start llama-swap",
	},
	"cache": {
		"# Clear Docker system cache:",
		"docker system prune -f",
		"",
		"# Clear model cache (if mounted volume):",
		"docker exec llama-swap rm -rf /tmp/llama-cache/*",
		"",
		"# Restart container to clear memory:",
		"docker restart llama-swap",
	},
}

func lookupCommands(kind string) (string, bool) {
	lines, ok := commandReference[kind]
	if !ok {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}
