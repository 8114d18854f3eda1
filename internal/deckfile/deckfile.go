// Package deckfile parses the plain-text deck list format consumed by the
// search CLI: one card per line, comments, and a handful of free-form
// options, mirroring the original Python implementation's deck loader.
package deckfile

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/ramonehamilton/amulet-titan-search/internal/card"
	"github.com/ramonehamilton/amulet-titan-search/internal/cardset"
)

// Deck is a parsed deck file: its shuffled card list plus any key: value
// options it declared.
type Deck struct {
	Name    string
	Cards   cardset.Cards
	Options map[string]string
}

// Load reads and parses the deck file at path, shuffling the result with
// rnd.
func Load(path string, rnd *rand.Rand, logger *slog.Logger) (Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return Deck{}, fmt.Errorf("deckfile: open %s: %w", path, err)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepathBase(path), filepathExt(path))
	return parse(name, f, rnd, logger)
}

func parse(name string, r io.Reader, rnd *rand.Rand, logger *slog.Logger) (Deck, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var items []card.Card
	options := map[string]string{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := parseOption(line); ok {
			options[key] = value
			continue
		}
		count, cardName, err := parseCardLine(line)
		if err != nil {
			return Deck{}, fmt.Errorf("deckfile: line %d: %w", lineNo, err)
		}
		for i := 0; i < count; i++ {
			items = append(items, card.New(cardName))
		}
	}
	if err := scanner.Err(); err != nil {
		return Deck{}, fmt.Errorf("deckfile: read: %w", err)
	}

	if len(items) != 60 {
		logger.Warn("deck does not total 60 cards", "deck", name, "total", len(items))
	}

	shuffle(items, rnd)
	return Deck{Name: name, Cards: cardset.Of(items...), Options: options}, nil
}

// parseOption recognizes a "key: value" line, e.g. "colors: WUBR".
func parseOption(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	// A card count line never contains a colon; this disambiguates "1 Forest"
	// from "colors: WUBR" by requiring the part before the colon to have no
	// leading digit run followed by a space (i.e. not "<count> <name>").
	if _, _, err := parseCardLine(line); err == nil {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// parseCardLine parses "<count> <card name>".
func parseCardLine(line string) (int, string, error) {
	fields := strings.SplitN(line, " ", 2)
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("expected '<count> <card name>', got %q", line)
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("expected a leading count, got %q", line)
	}
	return count, strings.TrimSpace(fields[1]), nil
}

// shuffle performs a Fisher-Yates shuffle in place.
func shuffle(items []card.Card, rnd *rand.Rand) {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	rnd.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

func filepathBase(path string) string {
	if idx := strings.LastIndexAny(path, "/\\"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func filepathExt(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx:]
	}
	return ""
}
