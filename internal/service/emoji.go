package service

import (
	"math/rand"
	"strings"
)

// keywordEmoji is one ordered table row; earlier rows win so the list works
// like the original keyword scan where table order matters.
type keywordEmoji struct {
	keyword string
	emoji   string
}

// emojiTable maps description keywords to emoji, scanned in order,
// first match wins.
var emojiTable = []keywordEmoji{
	{"акула", "🦈"}, {"кот", "😼"}, {"собака", "🐶"}, {"динозавр", "🦖"},
	{"поезд", "🚂"}, {"ракета", "🚀"}, {"алкоголь", "🍺"}, {"танц", "🕺"},
	{"крича", "🗣️"}, {"бомба", "💣"}, {"космос", "🪐"}, {"пустыня", "🏜️"},
	{"город", "🏙️"}, {"лес", "🌴"}, {"море", "🌊"}, {"еда", "🍔"},
	{"фрукт", "🍍"}, {"кофе", "☕"}, {"магия", "✨"}, {"взрыв", "💥"},
	{"кринж", "💀"}, {"угар", "🦒"}, {"жесть", "🔥"}, {"абсурд", "😝"},
	{"крокодил", "🐊"}, {"итал", "🇮🇹"},
}

// defaultEmojis is the pool used when no keyword matches.
var defaultEmojis = []string{"🦒", "💀", "😝", "🔥"}

// StatusEmojis are the fixed glyphs used in transport-level messages.
var StatusEmojis = map[string]string{
	"start":   "😈",
	"help":    "🦖",
	"search":  "🤟",
	"random":  "🪩",
	"audio":   "🎙️",
	"loading": "👾",
	"error":   "😣",
	"success": "🔥",
	"meme":    "🦄",
}

// PickEmoji selects an emoji for a meme description: the first table row
// whose keyword occurs as a substring wins, otherwise a random default.
func PickEmoji(description string) string {
	description = strings.ToLower(description)
	for _, row := range emojiTable {
		if strings.Contains(description, row.keyword) {
			return row.emoji
		}
	}
	return defaultEmojis[rand.Intn(len(defaultEmojis))]
}
