/*
Package serialized rewrites PHP-serialized string tokens inside SQL dumps.

A serialized string is written as s:<bytes>:"<value>"; so a plain find/replace
that changes the value without the length corrupts the payload. The package
splits the work in three steps:

	+---------+     +---------+     +---------+
	|  Scan   | --> |  Plan   | --> |  Patch  |
	| (find)  |     | (diff)  |     | (apply) |
	+---------+     +---------+     +---------+

🔍 Scan locates tokens preceded by a statement or structure delimiter (; { }).
The match is a regular-expression heuristic, not a parser: values containing an
unescaped `"` followed later by `;` are split wrongly, and a token directly
following another token loses its delimiter to the previous match.

📋 Plan substitutes the find pattern over each token's full source span and
records the new value and byte length. Rewrites that empty the value are
dropped and the original token stays as it was.

🔧 Patch swaps s:<old>:"<value>" for s:<new>:"<rewrite>" once per planned
token, in scan order.

🔍 Example:

	tokens, err := serialized.Scan(doc)
	plan, err := serialized.Plan(ctx, tokens, pat)
	doc, err = serialized.Patch(ctx, doc, plan, nil)
*/
package serialized
