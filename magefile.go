//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "flashgen"
	mainPath   = "./cmd/flashgen"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the flashgen binary
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-o", binaryName, mainPath)
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs flashgen into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", mainPath)
}

// Clean removes the built binary
func Clean() error {
	fmt.Println("Cleaning")
	if err := sh.Rm(binaryName); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
