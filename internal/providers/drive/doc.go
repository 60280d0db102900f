// Package drive is the recipe store gateway. Recipes are documents in a
// Google Drive folder tree: folders are categories and files are recipes.
//
// Calls go through the shared resty client with an API key. Native documents
// are exported as text/plain; uploaded files the export endpoint refuses
// are downloaded and decoded (charset detection, HTML flattening) before the
// text is sanitized.
package drive
