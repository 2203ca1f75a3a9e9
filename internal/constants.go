/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent          = "chesssystem/0.1.0 (+https://github.com/mikeb26/chesssystem)"
	BccUSCFAffiliateID = "A5000408"
)
