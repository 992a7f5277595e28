// Package model defines the values shared by every stage of the price widget:
// the HouseData snapshot edited by the form, the nullable Price returned by the
// prediction service, and the FieldSpec metadata renderers use to label and
// constrain inputs. HouseData is a plain value; updates return a new copy so
// observers holding an older snapshot never see a partially applied edit.
// Field values stay strings end to end because the prediction endpoint accepts
// them verbatim; numeric coercion is the service's concern.
package model
