package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

func main() {
	port := "8080"
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	baseDir := "."

	r := mux.NewRouter()
	r.PathPrefix("/data/").Handler(http.StripPrefix("/data/", http.FileServer(http.Dir(baseDir+"/data"))))
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(baseDir + "/web")))

	fmt.Printf("🌐 server listening on http://localhost:%s\n", port)
	fmt.Println("   open this URL in a browser to view the solved schedule")
	fmt.Println("   ctrl+c to stop")

	log.Fatal(http.ListenAndServe(":"+port, r))
}
