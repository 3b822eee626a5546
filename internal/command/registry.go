// /internal/command/registry.go
package command

import (
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Command describes one slash command: its definition for registration and
// the gates the dispatcher enforces before running the handler.
type Command struct {
	Sort        int
	Name        string
	Description string
	Category    string

	GuildOnly         bool
	Cooldown          time.Duration // 0 = no cooldown
	RequirePermission int64         // permission bits the invoker must hold, 0 = none

	SlashOptions []*discordgo.ApplicationCommandOption
	SlashHandler func(ctx *SlashContext)
}

var commandRegistry = map[string]*Command{}

func Register(cmd *Command) {
	commandRegistry[cmd.Name] = cmd
}

func Get(name string) (*Command, bool) {
	cmd, ok := commandRegistry[name]
	return cmd, ok
}

// All returns registered commands ordered by Sort, then name.
func All() []*Command {
	list := make([]*Command, 0, len(commandRegistry))
	for _, cmd := range commandRegistry {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Sort != list[j].Sort {
			return list[i].Sort < list[j].Sort
		}
		return list[i].Name < list[j].Name
	})
	return list
}
