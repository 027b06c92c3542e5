package app

// helpMarkdown is rendered with glamour on the Help screen.
const helpMarkdown = `# carlot

Keep track of the cars on the lot. Everything lives in memory and is gone
when you exit.

## Menu

| Key | Action |
| --- | --- |
| 1 | Add a car |
| 2 | List all cars in the order they were added |
| 3 | Search by id, make, model, max price and type, or county code |
| 4 | Update a car; leave a field blank to keep its value, enter ` + "`-`" + ` to clear a text field |
| 5 | Delete a car |
| 0, q | Exit |

Move with **↑/↓** or **j/k** and press **enter**, or type the number.
**esc** always returns to the main menu.

## Searching

* Make, model and type match the whole word, ignoring case.
* Max price includes cars priced exactly at the limit.
* The county code is the middle part of a registration: **221-D-12345**
  is in county **D**. Registrations without a dash have no county.

## Numbers

A price or year that is not a number is stored as **0** unless strict
input is switched on (` + "`--strict`" + ` or ` + "`input.strict: true`" + `), in which
case the form asks again.
`
