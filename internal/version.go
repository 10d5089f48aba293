package internal

// Version is the current flashgen release.
const Version = "0.4.0"
