// Package config loads the skill backend configuration from the environment
// using envconfig struct tags.
//
// The only settings a turn requires are the recipe store API key and the root
// collection id (DRIVE_API_KEY, DRIVE_ROOT_FOLDER_ID); everything else has a
// default. Validate reports what is missing.
package config
