// Package fixtures provides canonical sample texts and backend payloads used
// across extraction tests and the demo command.
package fixtures

// Sample review texts exercised by the demo and the extractor tests. They
// cover the three canonical shapes: a first-person review naming one person,
// a third-person mention, and a text naming two distinct people.
const (
	ReviewSinglePerson = "I recently purchased the wireless headphones and I am very happy with them. " +
		"The sound quality is excellent and the battery lasts all day. " +
		"My name is Riyadh and I am from Bangladesh."

	ReviewThirdPerson = "Emily Clarke from Canada left a glowing five-star review after using the blender " +
		"for three months. She said it handles frozen fruit without any trouble."

	ReviewTwoPeople = "Riyadh (riyadhgenai@gmail.com) from Bangladesh wrote that the laptop stand is sturdy " +
		"and well built. Bob Smith from the USA disagreed and found it wobbly on his desk."
)

// Backend payloads a schema-conforming model would return for the sample
// texts above.
const (
	PayloadSinglePerson = `{"name":"Riyadh","lastname":null,"country":"Bangladesh","email":null}`

	PayloadThirdPerson = `{"name":"Emily","lastname":"Clarke","country":"Canada","email":null}`

	PayloadTwoPeople = `{"people":[` +
		`{"name":"Riyadh","lastname":null,"country":"Bangladesh","email":"riyadhgenai@gmail.com"},` +
		`{"name":"Bob","lastname":"Smith","country":"USA","email":null}]}`

	// PayloadNoPerson is what the model returns for text that names nobody.
	PayloadNoPerson = `{"name":null,"lastname":null,"country":null,"email":null}`
)
