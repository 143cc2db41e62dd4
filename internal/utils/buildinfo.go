package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// GetApplicationVersion resolves the running binary version. Module build
// information takes precedence; a git describe of the enclosing repository is
// used for development builds.
func GetApplicationVersion() string {
	buildInformation, buildInformationAvailable := debug.ReadBuildInfo()
	if buildInformationAvailable && buildInformation.Main.Version != "" && buildInformation.Main.Version != "(devel)" {
		return buildInformation.Main.Version
	}

	repositoryPath, repositoryError := findGitRepository(".")
	if repositoryError == nil && repositoryPath != "" {
		// #nosec G204
		exactTagCommand := exec.Command("git", "describe", "--tags", "--exact-match")
		exactTagCommand.Dir = repositoryPath
		exactTagOutput, exactTagError := exactTagCommand.Output()
		if exactTagError == nil && len(exactTagOutput) > 0 {
			return strings.TrimSpace(string(exactTagOutput))
		}

		// #nosec G204
		describeCommand := exec.Command("git", "describe", "--tags", "--long", "--dirty")
		describeCommand.Dir = repositoryPath
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}

	return unknownVersion
}

// findGitRepository walks upward from startDirectory until it finds a
// directory containing a .git folder.
func findGitRepository(startDirectory string) (string, error) {
	absoluteStartDirectory, absolutePathError := filepath.Abs(startDirectory)
	if absolutePathError != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, absolutePathError)
	}

	currentDirectory := absoluteStartDirectory
	for {
		gitPath := filepath.Join(currentDirectory, GitDirectoryName)
		gitPathInformation, statError := os.Stat(gitPath)
		if statError == nil && gitPathInformation.IsDir() {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf(".git directory not found in or above %s", absoluteStartDirectory)
}
