package main

import "github.com/magefile/mage/mg"

// Convert turns submission PDFs into plain text.
func Convert() error {
	mg.Deps(Build)
	return bin("convert")
}

// Extract pulls title and abstract fields from converted text.
func Extract() error {
	mg.Deps(Build)
	return bin("extract")
}

// Join matches extracted records with acceptance outcomes.
func Join() error {
	mg.Deps(Build)
	return bin("join")
}

// Tokenize splits corpus abstracts into cleaned word tokens.
func Tokenize() error {
	mg.Deps(Build)
	return bin("tokenize")
}

// Report renders the word-statistics report.
func Report() error {
	mg.Deps(Build)
	return bin("report")
}
