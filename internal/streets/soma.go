// internal/streets/soma.go
package streets

// SoMa is the adjacency table for the South of Market / Embarcadero service area.
var SoMa = NewTable(somaMainStreets, somaSecondary)

var somaMainStreets = []MainStreet{
	{"Spear Street (east side)", []string{"Mission Street", "Howard Street", "Folsom Street", "Harrison Street", "Bryant Street"}},
	{"Spear Street (west side)", []string{"Mission Street", "Howard Street", "Folsom Street", "Harrison Street", "Bryant Street"}},
	{"Folsom Street", []string{"The Embarcadero", "Spear Street", "Main Street", "Beale Street", "Fremont Street", "Grote Place", "1st Street", "Essex Street", "2nd Street", "Hawthorne Street", "3rd Street", "Mabini Street", "4th Street", "5th Street"}},
	{"Harrison Street", []string{"The Embarcadero", "Spear Street", "Main Street", "Fremont Street", "1st Street", "Essex Street", "2nd Street", "Hawthorne Street", "3rd Street", "Lapu Lapu Street", "4th Street", "5th Street"}},
	{"Bryant Street", []string{"The Embarcadero", "Main Street", "Beale Street", "Rincon Street", "2nd Street", "Jack London Alley", "3rd Street", "Ritch Street", "Zoe Street", "4th Street", "5th Street"}},
	{"The Embarcadero", []string{"Battery Street", "Green Street", "Broadway Street", "Washington Street", "Market Street", "Mission Street", "Howard Street", "Folsom Street", "Harrison Street", "Bryant Street", "Brannan Street", "Townsend Street", "2nd Street", "3rd Street", "4th Street"}},
}

var somaSecondary = []SecondaryEntry{
	{Wildcard, "Battery Street", []string{"Green Street", "Lombard Street"}},
	{Wildcard, "Green Street", []string{"Battery Street", "Broadway Street"}},
	{Wildcard, "Broadway Street", []string{"Green Street", "Washington Street"}},
	{Wildcard, "Washington Street", []string{"Broadway Street", "Market Street"}},
	{Wildcard, "Market Street", []string{"Washington Street", "Mission Street"}},
	{Wildcard, "Mission Street", []string{"Market Street", "Howard Street"}},
	{Wildcard, "Howard Street", []string{"Mission Street", "Folsom Street"}},
	{Wildcard, "Folsom Street", []string{"Howard Street", "Harrison Street"}},
	{Wildcard, "Harrison Street", []string{"Folsom Street", "Bryant Street"}},
	{Street("Bryant Street"), "The Embarcadero", []string{"Main Street"}},
	{Wildcard, "The Embarcadero", []string{"Spear Street"}},
	{Street("The Embarcadero"), "Townsend Street", []string{"Brannan Street"}},
	{Wildcard, "Townsend Street", []string{"2nd Street"}},
	{Wildcard, "Brannan Street", []string{"Townsend Street", "Bryant Street"}},
	{Wildcard, "Bryant Street", []string{"Brannan Street", "Harrison Street"}},
	{Wildcard, "Spear Street", []string{"The Embarcadero", "Main Street"}},
	{Street("Bryant Street"), "Main Street", []string{"The Embarcadero", "Beale Street"}},
	{Street("Harrison Street"), "Main Street", []string{"Spear Street", "Fremont Street"}},
	{Wildcard, "Main Street", []string{"Spear Street", "Beale Street"}},
	{Street("Bryant Street"), "Beale Street", []string{"Main Street", "Rincon Street", "2nd Street"}},
	{Wildcard, "Beale Street", []string{"Main Street", "Fremont Street"}},
	{Wildcard, "Rincon Street", []string{"Beale Street", "2nd Street"}},
	{Street("Harrison Street"), "Fremont Street", []string{"Main Street", "1st Street"}},
	{Street("Folsom Street"), "Fremont Street", []string{"Beale Street", "Grote Place", "1st Street"}},
	{Wildcard, "Fremont Street", []string{"Beale Street", "1st Street"}},
	{Wildcard, "Grote Place", []string{"Fremont Street", "1st Street"}},
	{Street("Folsom Street"), "1st Street", []string{"Fremont Street", "Grote Place", "Essex Place", "2nd Street"}},
	{Wildcard, "1st Street", []string{"Fremont Street", "Essex Place", "2nd Street"}},
	{Wildcard, "Essex Street", []string{"1st Street", "2nd Street"}},
	{Street("Bryant Street"), "2nd Street", []string{"Beale Street", "Rincon Street", "Jack London Alley", "3rd Street"}},
	{Street("The Embarcadero"), "2nd Street", []string{"Townsend Street", "3rd Street"}},
	{Wildcard, "2nd Street", []string{"1st Street", "Essex Street", "Hawthorne Street"}},
	{Wildcard, "Hawthorne Street", []string{"2nd Street", "3rd Street"}},
	{Wildcard, "Jack London Alley", []string{"2nd Street", "3rd Street"}},
	{Street("The Embarcadero"), "3rd Street", []string{"2nd Street", "4th Street"}},
	{Street("Bryant Street"), "3rd Street", []string{"Jack London Alley", "Ritch Street", "4th Street"}},
	{Street("Folsom Street"), "3rd Street", []string{"Hawthorne Street", "Mabini Street", "4th Street"}},
	{Street("Harrison Street"), "3rd Street", []string{"Hawthorne Street", "Lapu Lapu Street", "4th Street"}},
	{Wildcard, "3rd Street", []string{"4th Street"}},
	{Wildcard, "Mabini Street", []string{"3rd Street", "4th Street"}},
	{Wildcard, "Lapu Lapu Street", []string{"3rd Street", "4th Street"}},
	{Wildcard, "Ritch Street", []string{"3rd Street", "Zoe Street", "4th Street"}},
	{Wildcard, "Zoe Street", []string{"3rd Street", "Ritch Street", "4th Street"}},
	{Street("Folsom Street"), "4th Street", []string{"3rd Street", "Mabini Street", "5th Street"}},
	{Street("Harrison Street"), "4th Street", []string{"3rd Street", "Lapu Lapu Street", "5th Street"}},
	{Street("Bryant Street"), "4th Street", []string{"3rd Street", "Zoe Street", "Ritch Street", "5th Street"}},
	{Wildcard, "4th Street", []string{"3rd Street", "5th Street"}},
	{Wildcard, "5th Street", []string{"4th Street"}},
}
