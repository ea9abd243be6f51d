// Package jsonfile provides JSON-file implementations of the storage
// interfaces defined in the internal/store package. Every record is one JSON
// document under a data directory:
//
//	<root>/courses.json                                    the ledger
//	<root>/Courses/<course_id>.json                        course records
//	<root>/Students/<student_id>.json                      student records
//	<root>/Selected_Courses/selected_courses_<id>.json     derived view exports
//
// All file access goes through an afero.Fs so tests can run in memory.
package jsonfile
