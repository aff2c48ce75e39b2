package ai

const pagePrompt = `Transcribe all text on this page image into GitHub-flavoured Markdown.
Keep the reading order. Use headings, lists and tables where the layout shows them.
Do not describe images, do not add commentary and do not wrap the answer in code fences.
If the page has no text, answer with an empty message.`

const documentPrompt = `You are a document parser. Return ONLY valid JSON, no code fences and no explanations.

Split this PDF into its sections in reading order and return:
{
  "sections": [
    {"number": "1", "title": "Safety", "start_page": 4, "end_page": 6, "depth": 1, "text": "Markdown body of this section only"}
  ]
}

Rules:
- number: the section numbering printed in the PDF (1, 1.1, 1.2.1), or "" when there is none
- title: the section title without its number
- depth: 1 for top-level sections, 2 for subsections, 3 for sub-subsections and so on
- start_page/end_page: 1-based page numbers
- text: the complete Markdown text of the section body, excluding its subsections, which get their own entries
- keep tables as Markdown tables
`
