// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package utils

import (
	"strings"
	"unicode"
)

const pathSeparator = "."

// ToSnake converts a caller-facing column key (camelCase) into the storage
// convention (snake_case). Every dot-separated segment is converted on its
// own so relation paths keep their separators. Already snake_cased input is
// returned unchanged.
func ToSnake(key string) string {
	if !strings.Contains(key, pathSeparator) {
		return snakeSegment(key)
	}
	segments := strings.Split(key, pathSeparator)
	for i, s := range segments {
		segments[i] = snakeSegment(s)
	}
	return strings.Join(segments, pathSeparator)
}

func snakeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel converts a storage name (snake_case or kebab-case) into the
// lowerCamelCase form used to name relations.
func ToCamel(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			upper = b.Len() > 0
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		case b.Len() == 0:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
