package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// German messages, keyed by the en-US format.
var catalogDe = map[string]string{
	"program ended: 0x%02x\n":                                          "Programm beendet: 0x%02x\n",
	"program ran off the end of memory at 0x%02x\n":                    "Programm lief bei 0x%02x über das Speicherende hinaus\n",
	"program ran off the end of memory reading the operand at 0x%02x\n": "Programm lief beim Lesen des Operanden bei 0x%02x über das Speicherende hinaus\n",
	"program still running at 0x%02x\n":                                "Programm läuft noch bei 0x%02x\n",
	"[+] CPU Cycled: %d\n":                                             "[+] CPU-Zyklen: %d\n",
	"unknown opcodes skipped: %d\n":                                    "übersprungene unbekannte Opcodes: %d\n",
	"halted":                                                           "angehalten",
	"address out of range":                                             "Adresse außerhalb des Bereichs",
	"malformed load":                                                   "fehlerhafte Ladung",
	"image syntax":                                                     "Abbild-Syntax",
	"line %d ip 0x%02x %v":                                             "Zeile %d ip 0x%02x %v",
	"line %d '%v' %v":                                                  "Zeile %d '%v' %v",
	"opcode invalid":                                                   "ungültiger Opcode",
	"program exceeds memory":                                           "Programm überschreitet den Speicher",
}

func init() {
	for key, msg := range catalogDe {
		err := message.SetString(language.German, key, msg)
		if err != nil {
			panic(err)
		}
	}
}
