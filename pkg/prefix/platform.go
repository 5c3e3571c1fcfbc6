// Copyright (C) 2025 JK8789 (jk8789@users.noreply.github.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package prefix

import "strings"

// platformPrefixes are namespaces that never identify third-party
// libraries: the OS framework, compatibility libraries, the language
// runtime and its standard extensions, and common test scaffolding.
var platformPrefixes = []string{
	"android.", "androidx.",
	"java.", "javax.",
	"kotlin.", "kotlinx.",
	"dalvik.", "sun.", "com.sun.",
	"junit.", "org.junit.",
	"org.jetbrains.",
}

// IsPlatform reports whether a class name or prefix belongs to a
// platform namespace and should be excluded from library matching.
func IsPlatform(name string) bool {
	for _, p := range platformPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
