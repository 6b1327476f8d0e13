// Package security provides the scan policy and path containment checks.
//
// Scanning untrusted skill bundles touches the filesystem in three places,
// and each goes through a containment check here:
//
//   - Archive extraction (entries must stay inside the extraction root)
//   - Directory walking (file symlinks must resolve inside the scan root)
//   - Installation (the skill name must resolve inside the skills directory)
//
// Paths are canonicalized before comparison so symlinked parents cannot
// be used to escape a root.
package security
