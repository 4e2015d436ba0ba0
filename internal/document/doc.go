// Package document locates named regions of the report template and replaces
// their content.
//
// A document is tokenized with golang.org/x/net/html into a small typed tree:
// each <section id="..."> knows the byte spans of its first table body, ordered
// list and callout box, and the document knows its header meta line and the
// instructional notice box. Edits splice new content into the original bytes,
// so everything outside the replaced span stays byte-identical.
//
// Design decision: We use the tokenizer rather than html.Parse because the
// tree builder normalizes markup (it inserts <tbody>, <html> and <body>
// elements and re-serializes attributes). The tokenizer reports the raw bytes
// of every token, which lets us keep offsets into the unmodified input while
// still tracking element nesting correctly.
package document
