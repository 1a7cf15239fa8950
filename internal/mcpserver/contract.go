package mcpserver

// HighlightFormatURI identifies the highlight format contract resource.
const HighlightFormatURI = "portfolio://highlight-format"

// HighlightFormatContract describes how project records are shaped so that
// the detail page can split them into sections.
const HighlightFormatContract = `# Portfolio Project Format

A project record is a JSON object. Only ` + "`slug`" + ` is required.

` + "```" + `json
{
  "slug": "cms-migration",
  "title": "CMS 移行",
  "lead": "One sentence shown on the card.",
  "year": 2024,
  "type": "Web",
  "tags": ["CMS", "Go"],
  "role": "Backend / PM",
  "highlights": [
    "背景：旧 CMS の保守が限界",
    "目的：編集フローを一本化する",
    "進め方：週次で移行範囲を切る",
    "成果：公開までの時間を半減",
    "学び：段階移行の価値"
  ]
}
` + "```" + `

## Sections from highlights

Each highlight line is trimmed and blank lines are dropped. A line starting
with one of these labels, followed by a full-width "：" or half-width ":"
colon, goes to the matching section with the label removed:

| Section | Labels |
|---|---|
| Context | 背景, 課題 |
| Goal | 目的 |
| Process | 進め方, 工夫, プロセス |
| Outcome | 成果 |
| Learning | 学び |

Context and Goal lines are joined with newlines and rendered as Markdown.
Lines without a known label are appended to Process.

## Explicit sections

A record may instead carry ` + "`context`" + `, ` + "`goal`" + ` (strings) and
` + "`process`" + `, ` + "`outcome`" + `, ` + "`learning`" + ` (lists). If any of them is
present, highlights are not split and the explicit fields are shown as is.

## Loose values

- ` + "`year`" + ` may be a number or a numeric string. Anything else counts as
  unknown and sorts as the oldest.
- List fields accept a single string in place of an array.
- ` + "`role`" + ` accepts an array or a string separated by "/".
- Slugs are expected to be unique. With duplicates the first record wins.
`
