package main

import "github.com/ariebrainware/colposcopy-api/cmd"

// @title           Colposcopy API
// @version         1.0
// @description     Patients, colposcopy exams and appointments for a colposcopy clinic.
// @BasePath        /
func main() {
	cmd.Execute()
}
