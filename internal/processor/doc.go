// Package processor runs the flashcard pipeline. It reads the input text,
// builds the prompt, asks the completion client for flashcards, parses the
// reply and hands the cards to the anki package for writing. Both the GUI
// and the command line front ends drive this package.
package processor
