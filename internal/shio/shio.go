// Package shio assigns the Chinese zodiac animal and element to a year.
package shio

import "github.com/zapponejosh/chronos-api/internal/calendar"

// Animal is one of the twelve zodiac animals, Rat first.
type Animal int

const (
	Rat Animal = iota
	Ox
	Tiger
	Rabbit
	Dragon
	Snake
	Horse
	Goat
	Monkey
	Rooster
	Dog
	Pig
)

var animalNames = [12]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

func (a Animal) String() string {
	if a < Rat || a > Pig {
		return "Unknown"
	}
	return animalNames[a]
}

// Element is one of the five elements.
type Element int

const (
	Metal Element = iota
	Water
	Wood
	Fire
	Earth
)

var elementNames = [5]string{"Metal", "Water", "Wood", "Fire", "Earth"}

func (e Element) String() string {
	if e < Metal || e > Earth {
		return "Unknown"
	}
	return elementNames[e]
}

// elementByLastDigit pairs consecutive final digits onto one element.
var elementByLastDigit = [10]Element{Metal, Metal, Water, Water, Wood, Wood, Fire, Fire, Earth, Earth}

// Shio is the element and animal of a year.
type Shio struct {
	Element Element
	Animal  Animal
}

// String renders the pair as "Metal Horse".
func (s Shio) String() string {
	return s.Element.String() + " " + s.Animal.String()
}

// BaseYear is a Rat year; the animal cycle counts from it.
const BaseYear = 1900

// For returns the shio of year. It is defined for every integer year.
func For(year int) Shio {
	return Shio{
		Element: elementByLastDigit[calendar.Mod(year, 10)],
		Animal:  Animal(calendar.Mod(year-BaseYear, 12)),
	}
}
