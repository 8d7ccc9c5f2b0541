// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package configtest

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

const modulePath = "github.com/livekit/livestream-server"

// yaml keys double as CLI flag and env var names
var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

// CheckYAMLTags reports config fields that would be written out as zero
// values when marshalling defaults, and keys that cannot become flag names.
func CheckYAMLTags(config any) error {
	return checkType(reflect.TypeOf(config), map[reflect.Type]struct{}{})
}

func checkType(t reflect.Type, seen map[reflect.Type]struct{}) error {
	if _, ok := seen[t]; ok {
		return nil
	}
	seen[t] = struct{}{}

	switch t.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.Pointer:
		return checkType(t.Elem(), seen)
	case reflect.Struct:
		// structs from dependencies follow their own conventions
		if !strings.HasPrefix(t.PkgPath(), modulePath) {
			return nil
		}
		return checkStruct(t, seen)
	default:
		return nil
	}
}

func checkStruct(t reflect.Type, seen map[reflect.Type]struct{}) error {
	var errs error
	keys := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		parts := strings.Split(field.Tag.Get("yaml"), ",")
		if parts[0] == "-" {
			continue
		}
		name := fmt.Sprintf("%s.%s", t.Name(), field.Name)
		inline := slices.Contains(parts, "inline")

		if !inline {
			switch {
			case parts[0] == "":
				errs = multierr.Append(errs, fmt.Errorf("%s has no yaml key", name))
			case !keyPattern.MatchString(parts[0]):
				errs = multierr.Append(errs, fmt.Errorf("%s yaml key %q is not snake_case", name, parts[0]))
			case keys[parts[0]] != "":
				errs = multierr.Append(errs, fmt.Errorf("%s reuses yaml key %q of %s", name, parts[0], keys[parts[0]]))
			default:
				keys[parts[0]] = field.Name
			}
		}

		if field.Type.Kind() != reflect.Bool &&
			field.Tag.Get("config") != "allowempty" &&
			!inline && !slices.Contains(parts, "omitempty") {
			errs = multierr.Append(errs, fmt.Errorf("%s missing omitempty tag", name))
		}

		errs = multierr.Append(errs, checkType(field.Type, seen))
	}
	return errs
}
