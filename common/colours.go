package common

import "github.com/diamondburned/arikawa/v3/discord"

// Embed colours
const (
	ColourRed    discord.Color = 0xd14171
	ColourGreen  discord.Color = 0x31a352
	ColourBlue   discord.Color = 0x2f75d1
	ColourPurple discord.Color = 0x9b59b6
	ColourOrange discord.Color = 0xe67e22
)
