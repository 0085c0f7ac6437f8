package service

import "testing"

func TestPickEmoji_KeywordMatch(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "shark", description: "акула в кроссовках найк", want: "🦈"},
		{name: "crocodile", description: "крокодил кусает всех подряд", want: "🐊"},
		{name: "earlier table row wins", description: "крокодил бомбардировщик", want: "💣"},
		{name: "coffee", description: "чашка кофе ниндзя", want: "☕"},
		{name: "case insensitive", description: "КОСМОС и звёзды", want: "🪐"},
		{name: "first row wins", description: "акула и кот дерутся", want: "🦈"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PickEmoji(tt.description); got != tt.want {
				t.Errorf("PickEmoji(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestPickEmoji_DefaultPool(t *testing.T) {
	pool := make(map[string]bool, len(defaultEmojis))
	for _, e := range defaultEmojis {
		pool[e] = true
	}

	for i := 0; i < 50; i++ {
		got := PickEmoji("ничего знакомого здесь нет")
		if !pool[got] {
			t.Fatalf("PickEmoji returned %q, not from the default pool", got)
		}
	}
}
