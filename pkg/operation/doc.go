/*
Package operation runs one reserialize pass over a SQL dump.

	+--------+    +-------------+    +---------+    +--------+
	|  Init  | -> | Reserialize | -> | Rewrite | -> | Finish |
	| (read) |    |  (tokens)   |    | (plain) |    | (write)|
	+--------+    +-------------+    +---------+    +--------+

🎯 Stages:
- Init reads the input dump and counts matches of the find pattern
- Reserialize scans, plans, and patches serialized string tokens, skipped when nothing matched
- Rewrite runs the plain global substitution over the whole document
- Finish counts what is left and writes the output once

Every stage receives the document produced by the previous one. A failing
stage stops the run before Finish, so no output is written.

🔍 Example:

	p, err := operation.New(operation.Options{
		Input:   "in.sql",
		Output:  "out.sql",
		Find:    `http://old\.test`,
		Replace: "https://new.test",
	})
	report, err := p.Run(ctx)
*/
package operation
