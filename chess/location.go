/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

// IsValidLocation reports whether name starts with an uppercase letter A-Z
// followed only by lowercase letters a-z and spaces.
func IsValidLocation(name string) bool {
	if name == "" {
		return false
	}
	if name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if (c < 'a' || c > 'z') && c != ' ' {
			return false
		}
	}
	return true
}
