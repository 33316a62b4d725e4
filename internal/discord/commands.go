package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/dohun0310/Discord-Music-Bot/internal/command"
)

// registerCommands syncs slash commands for a guild with Discord: deletes
// obsolete ones, creates or updates commands whose definition has changed.
func (b *Bot) registerCommands(guildID string) error {
	appID, err := b.appID()
	if err != nil {
		return err
	}

	remote, _ := b.dg.ApplicationCommands(appID, guildID)
	local := buildCommandDefinitions()

	b.deleteObsoleteCommands(appID, guildID, remote, local)
	b.upsertChangedCommands(appID, guildID, local)

	return nil
}

// buildCommandDefinitions returns definitions for all registered commands.
func buildCommandDefinitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range command.All() {
		if def := commandDefinition(c); def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

func (b *Bot) deleteObsoleteCommands(appID, guildID string, remote, local []*discordgo.ApplicationCommand) {
	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
	}

	hashes := loadCommandHashes(guildID)
	for _, rc := range remote {
		if _, exists := localNames[rc.Name]; exists {
			continue
		}
		b.log.Info().Str("guild", guildID).Str("command", rc.Name).Msg("deleting obsolete command")
		if err := b.dg.ApplicationCommandDelete(appID, guildID, rc.ID); err != nil {
			b.log.Error().Err(err).Str("guild", guildID).Str("command", rc.Name).Msg("failed to delete command")
		} else {
			delete(hashes, rc.Name)
		}
	}
	saveCommandHashes(guildID, hashes)
}

func (b *Bot) upsertChangedCommands(appID, guildID string, defs []*discordgo.ApplicationCommand) {
	cached := loadCommandHashes(guildID)

	var changed []*discordgo.ApplicationCommand
	newHashes := make(map[string]string, len(defs))
	for _, d := range defs {
		h := hashCommand(d)
		newHashes[d.Name] = h
		if cached[d.Name] != h {
			changed = append(changed, d)
		}
	}
	if len(changed) == 0 {
		return
	}

	b.log.Info().Str("guild", guildID).Int("count", len(changed)).Msg("registering changed commands")
	for _, d := range changed {
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, d); err != nil {
			b.log.Error().Err(err).Str("guild", guildID).Str("command", d.Name).Msg("failed to register command")
			delete(newHashes, d.Name)
		} else {
			b.log.Info().Str("guild", guildID).Str("command", d.Name).Msg("command registered")
		}
		time.Sleep(25 * time.Millisecond) // stay well under Discord's rate limit
	}

	for k, v := range newHashes {
		cached[k] = v
	}
	saveCommandHashes(guildID, cached)
}

// commandDefinition extracts the slash definition from a registered command.
// Middleware wrappers pass SlashDefinition through.
func commandDefinition(c command.Command) *discordgo.ApplicationCommand {
	slash, ok := c.(command.SlashProvider)
	if !ok {
		return nil
	}
	def := slash.SlashDefinition()
	if def != nil && def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}

// appID returns the bot's application ID, fetching it if not cached in State.
func (b *Bot) appID() (string, error) {
	if id := b.dg.State.User.ID; id != "" {
		return id, nil
	}
	u, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}

// --- Command hash cache ---

func commandHashPath(guildID string) string {
	return filepath.Join("data", "commands", guildID+".json")
}

func loadCommandHashes(guildID string) map[string]string {
	out := make(map[string]string)
	if data, err := os.ReadFile(commandHashPath(guildID)); err == nil {
		_ = json.Unmarshal(data, &out)
	}
	return out
}

func saveCommandHashes(guildID string, hashes map[string]string) {
	path := commandHashPath(guildID)
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	if data, err := json.MarshalIndent(hashes, "", "  "); err == nil {
		_ = os.WriteFile(path, data, 0644)
	}
}

// --- Command hashing ---

// hashCommand returns a deterministic SHA-1 of a command's stable fields.
// Used to skip re-registration when nothing has changed.
func hashCommand(c *discordgo.ApplicationCommand) string {
	stable := map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"type":        c.Type,
	}
	if len(c.Options) > 0 {
		stable["options"] = normalizeOptions(c.Options)
	}
	data, _ := json.Marshal(stable)
	sum := sha1.Sum(data)
	return fmt.Sprintf("%x", sum)
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]interface{} {
	out := make([]map[string]interface{}, len(opts))
	for i, o := range opts {
		entry := map[string]interface{}{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]interface{}, len(o.Choices))
			for j, ch := range o.Choices {
				choices[j] = map[string]interface{}{"name": ch.Name, "value": ch.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		out[i] = entry
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["name"].(string) < out[j]["name"].(string)
	})
	return out
}
