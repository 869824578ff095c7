// Package pipeline renders post bodies from Markdown to HTML.
//
// The renderer is goldmark configured to match the blog's authoring dialect:
//   - tables and ~~strikethrough~~
//   - _underline_, ==highlight== and "quote" inline marks
//   - raw HTML passthrough
//   - code blocks: tagged blocks are highlighted by chroma with CSS classes,
//     untagged blocks are escaped into a plain <pre><code>
//
// In strict mode (the default) an unknown language tag fails the render with
// ErrUnknownLanguage. Lenient mode hands fenced blocks to goldmark-highlighting,
// which falls back to plain output instead.
package pipeline
