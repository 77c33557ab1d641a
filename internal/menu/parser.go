// Package menu provides the parsing, formatting and keyboard building
// logic for the menu bot. Everything here is pure: no I/O, no storage.
package menu

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxCategoryNameLen is the longest category name accepted by the menu.
const MaxCategoryNameLen = 60

// Parsing errors surfaced to users as plain-language messages.
var (
	ErrMissingName  = errors.New("category name is missing")
	ErrNameTooLong  = errors.New("category name is too long")
	ErrWrongArity   = errors.New("wrong number of dish fields")
	ErrInvalidPrice = errors.New("price is not a positive number")
)

// DishInput holds the structured fields extracted from an /add_dish
// command. Category carries the raw name; resolution to an id is the
// caller's job.
type DishInput struct {
	Category    string
	Name        string
	Price       string
	Description string
}

// ParseCategoryCommand extracts a category name from an /add_category
// message. All tokens after the command word are space-joined into the
// name. An empty name fails with ErrMissingName, a name over
// MaxCategoryNameLen runes fails with ErrNameTooLong.
func ParseCategoryCommand(text string) (string, error) {
	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return "", ErrMissingName
	}

	name := strings.Join(tokens[1:], " ")
	if utf8.RuneCountInString(name) > MaxCategoryNameLen {
		return "", ErrNameTooLong
	}

	return name, nil
}

// ParseDishCommand extracts dish fields from an /add_dish message of the
// form "/add_dish <category>_<name>_<price>[_<description>]". Each field
// is one whitespace-delimited token with internal underscores standing
// for spaces. Exactly 3 or 4 tokens are required; the description is
// absent when only 3 are given. The price token is normalized (comma
// decimal separator becomes a dot) and must parse as a strictly positive
// decimal.
func ParseDishCommand(text string) (DishInput, error) {
	tokens := strings.Fields(text)
	args := tokens
	if len(args) > 0 {
		args = args[1:]
	}

	if len(args) < 3 || len(args) > 4 {
		return DishInput{}, ErrWrongArity
	}

	input := DishInput{
		Category: unjoin(args[0]),
		Name:     unjoin(args[1]),
	}

	price, err := normalizePrice(args[2])
	if err != nil {
		return DishInput{}, err
	}
	input.Price = price

	if len(args) == 4 {
		input.Description = unjoin(args[3])
	}

	return input, nil
}

// unjoin turns a single underscore-joined token back into a multi-word
// value.
func unjoin(token string) string {
	return strings.ReplaceAll(token, "_", " ")
}

// normalizePrice converts a comma decimal separator to a dot and checks
// that the result is a strictly positive decimal. Zero and negative
// prices are rejected.
func normalizePrice(token string) (string, error) {
	normalized := strings.ReplaceAll(token, ",", ".")

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return "", ErrInvalidPrice
	}
	if value <= 0 {
		return "", ErrInvalidPrice
	}

	return normalized, nil
}
